// Package engine enumerates all solutions of a 9x9 Sudoku puzzle.
//
// The algorithm is constraint propagation combined with branch-and-bound
// backtracking, opportunistically parallelized across a bounded set of
// worker goroutines.
//
// ARCHITECTURE:
//
// Propagate-then-branch search:
// Each invocation owns a private copy of the puzzle. It repeatedly fills
// every cell that has exactly one candidate until a fixed point, then
// branches on the empty cell with the fewest candidates (minimum remaining
// values), recursing once per candidate digit in increasing order. A cell
// with zero candidates is a dead end and ends the branch silently.
//
// Worker admission:
// Before doing any work, an invocation that is not already the dedicated
// body of a worker offers itself to the admission controller. Under a
// mutex the controller double-checks the live worker count against the
// configured maximum; on success the whole invocation moves to a freshly
// spawned goroutine (the puzzle copy transfers with it) and the caller
// returns immediately. On failure the invocation continues inline. The
// cap bounds live workers, not cumulative spawns.
//
// Bookkeeping:
// Solution and worker counters are word-sized atomics. The solution cap
// is enforced by increment-then-rollback: an invocation that pushes the
// counter past the cap atomically undoes its increment and discards its
// solution. The last worker to retire records the end timestamp and then
// sets the done flag; the atomic store orders the two writes, so a driver
// polling Done observes a consistent final state.
//
// Cancellation is cooperative: every invocation checks its context on
// entry, and branches already past the check run to natural completion.
// Solution discovery order across workers is not deterministic; only the
// total count and the validity of each reported solution are.
package engine
