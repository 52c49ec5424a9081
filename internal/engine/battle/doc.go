// Package battle implements the turn-based combat resolver for miniature battles.
//
// A Session owns one battle. Every mutation goes through Transition, a pure function from
// (state, event) to (next state, log entries); the Session applies the result, stamps the
// entries with its clock and appends them to the battle log. Dice rolls go through an
// injected rpg-toolkit dice.Roller so tests can script outcomes.
//
// The package never logs and never panics on bad input; all failures are coded errors from
// internal/errors whose battle-specific kind can be read with KindOf.
package battle
