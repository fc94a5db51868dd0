// Package notify delivers one-time codes to users out of band. The SMTP
// notifier submits HTML mail over a plain SMTP/STARTTLS session; the log
// notifier prints codes for development. Delivery is fire-and-forget: no
// notifier retries, and the engine surfaces a failed dispatch to the caller.
package notify
