// Package event turns decoded IRC messages into typed chat events.
//
// Each event type has an As constructor that validates shape only: the
// command name plus whichever arguments, trailing data, and prefix nick the
// type needs. Semantic interpretation of tag values stays lazy, behind
// getter methods on the event.
//
// Conversion failures are classified: a wrong command yields an
// *InvalidCommandError, a missing argument an *ExpectedArgError, and absent
// data or nick the ErrExpectedData and ErrExpectedNick sentinels.
//
// Converted events alias the decode buffer, exactly like the messages they
// came from. Promote with the type's Own method, or event.Own for a boxed
// value, before the buffer is reused.
package event
