/*
Package ports defines the interfaces between the fluxfee actions and the outside world.

# Key Interfaces

  - AgentClient: the driven port. Owns chain identity, connectivity and the two
    submission operations. The concrete implementation lives in pkg/adapters/svm.
  - Action: the driving port. A named text-in/text-out unit invoked by an agent
    framework, an MCP server or the HTTP adapter.
  - Invoker: the surface adapters serve. Satisfied by registry.Registry and the
    root Toolkit.
*/
package ports
