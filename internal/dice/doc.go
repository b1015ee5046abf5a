// Package dice interprets dice notation such as "4d6h3 + 2, damage: 1d8 + 4".
//
// A request is parsed once into a NamedList. Each expression is then compiled
// into a Resolved tree, which is the only step that consumes randomness, and
// the resolved tree is evaluated and rendered. Evaluation and rendering are
// pure functions of the resolved tree.
//
// Chains of the same precedence lean right: "10 - 3 - 2" is 10 - (3 - 2).
package dice
