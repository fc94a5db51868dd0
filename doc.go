// Package authgate implements email-code-gated account authentication: code
// gated registration and email verification, password login issuing a signed
// bearer session token, and a code gated password-reset flow.
//
// The package is the public surface. It exposes [Engine], [Builder], [Config],
// the error taxonomy, and the collaborator interfaces [UserStore] and
// [Notifier]. Persistence and email transport stay behind those interfaces;
// ready-made implementations live under store/ and notify/.
//
// # Architecture boundaries
//
//   - The Engine owns the verification-code lifecycle and session-token
//     issuance. It never renders pages and never talks SMTP or Redis directly.
//   - The route gate under middleware/ is the only component that reads
//     inbound HTTP requests for tokens.
//   - The HTTP JSON edge under httpapi/ maps the error taxonomy onto status
//     codes and owns all response bodies.
//
// # Concurrency contract
//
// Engine methods are safe to call from multiple goroutines after
// initialization through [Builder.Build]. The Engine holds no mutable state
// of its own; concurrent operations on the same email race at the store, and
// the last written code/expiry pair wins. Code and token expiry is evaluated
// lazily at the moment of use; nothing sweeps expired state in the background.
package authgate
