// Package sunphase exposes solar phases (sunrise, sunset, dawn, dusk, golden
// hour and friends) at a location as a timeline of instants. A Timeline
// answers three questions about any reference instant: which selected phase
// occurred most recently before it, which occurs next after it, and whether
// the instant is itself an occurrence. The solar geometry comes from a
// Calculator, which only ever answers for one UTC calendar day at a time, so
// every query walks day boundaries until it has a confirmed answer. All times
// are UTC.
package sunphase
