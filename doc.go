// Package waterfall computes what a startup exit is really worth to an
// option holder.
//
// Exit proceeds do not split along the ownership percentages of an offer
// letter: they flow through a liquidation waterfall, where preferred
// investors are paid their liquidation preference first and common holders
// share what is left. The package models a single aggregate preferred class
// against the common pool:
//
//   - Distribute splits one exit between preferred and common, and derives the
//     holder's gross payout after dilution and net profit after the exercise
//     cost.
//   - FindBreakEven searches the smallest exit where the holder's net profit
//     reaches zero.
//   - Sweep and SweepParallel evaluate a range of exits, e.g. to draw the
//     payout curve.
//   - Presets provide benchmark liquidation terms by market scenario and round.
//
// All monetary arithmetic is exact decimal arithmetic, so that preferred and
// common payouts always add up to the exit proceeds. Every operation is a
// pure function of its inputs.
//
// This package is the foundation of the `tov` command-line tool.
package waterfall
