// Package logstream implements concurrent log streaming and fan-in
// aggregation for dockhand.
//
// One pump runs per monitored container. Each pump launches a
// "logs --follow" subprocess and reads its stdout and stderr in two
// independent goroutines, formatting every line with a timestamp and the
// container's display name and sending it into a single shared Stream.
// The consumer drains the Stream in arrival order.
//
// Ordering: lines from a single stream of a single container stay in
// order; the interleaving across streams and across containers follows
// arrival time and is otherwise unspecified.
//
// Cancellation is one-directional: stopping the Stream is the only
// signal. Producers observe it at their next send and unwind; each pump
// then kills and reaps its subprocess before exiting, so no process or
// descriptor survives the consumer.
package logstream
