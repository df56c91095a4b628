// Package counter animates the numbers of a key figures block.
//
// Each number element's markup is scanned once by [Extract], which swaps every digit run
// for a placeholder token. A [Driver] then re-renders the element every tick, counting
// each number up from zero by its [Step] until all of them reach their target. Ticks are
// scheduled through a [Scheduler]; [Loop] is a single-threaded implementation.
package counter
