// Package search provides a generic, problem-agnostic graph search engine.
//
// The engine is assembled from injected parts:
//
//   - Problem: initial state, goal test and successor generator.
//   - Frontier: the container that decides expansion order (Stack, Queue or PriorityQueue).
//   - PriorityFunc: maps a node and a heuristic to a priority (BreadthFirst, DepthFirst,
//     UniformCost, AStar, Greedy or any caller-supplied function).
//   - Heuristic: estimate of the remaining cost, NullHeuristic for uninformed strategies.
//
// It exposes two entry points:
//
//   - Engine.Search: run the loop to completion and get a Result.
//   - Engine.Stepper: iterate the loop one frontier pop at a time to drive UIs or debugging tools.
//
// Graph search tracks expanded states in a closed set. With revisiting enabled it tracks
// the best known path cost per state instead, which keeps the search correct on graphs
// with negative edge costs. Termination on graphs with negative cycles is the job of the
// priority function or the Problem (see graph.CycleGuard).
package search
