/*
Package domain contains the core models shared by the fluxfee actions and their adapters.

It defines the typed requests decoded from agent input, the uniform ActionResult envelope
returned to the agent, the error codes surfaced to callers, and the lifecycle events used
for observability. The package holds no I/O.

# Key Entities

  - FeePaymentRequest / FeeClaimRequest: validated, typed action inputs.
  - ActionResult: the success-or-error envelope every action emits as JSON text.
  - CodedError: a failure carrying a classification code that is passed through to the agent.
  - ActionEvent: emitted around every invocation through LifecycleHooks.
*/
package domain
