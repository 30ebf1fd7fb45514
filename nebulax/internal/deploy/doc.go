// Package deploy describes what to deploy and in which order.
//
// A Unit is a named, immutable graph of contract steps. A step argument is either a
// literal or the Future of an earlier step; every such reference becomes an explicit
// dependency Edge. Because a step can only refer to steps declared before it, the graph
// is acyclic by construction.
//
// Submitting transactions is the job of an Engine. The Executor drives an Engine through
// the graph in dependency order and runs independent steps concurrently.
package deploy
