// Package notifier announces fixtures from a snapshot on external channels.
//
// Twitter posts one tweet per fixture. Telegram sends a digest, split across
// messages when it would exceed the Bot API length limit. DryRun writes what
// would be posted without contacting any service.
package notifier
