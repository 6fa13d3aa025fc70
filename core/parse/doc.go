// Package parse unwraps and recovers JSON from loosely formatted text.
// [UnwrapCodeFence] strips the markdown fences models put around JSON.
// [RepairJSON] and [ParseStringAs] additionally run hand-edited input
// (single quotes, trailing commas, missing closers) through jsonrepair before
// giving up with [ErrNoJSON]. Model scoring output is not repaired; callers
// that need strict decoding use [UnwrapCodeFence] alone.
package parse
