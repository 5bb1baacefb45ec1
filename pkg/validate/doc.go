// Package validate runs refiners over a completed specification graph.
//
// Refiners are cross-cutting checks that only make sense once every type in
// a build unit exists, such as logical-name uniqueness. They never abort the
// build: findings are accumulated into a core.Report whose order follows
// refiner registration order, regardless of how the refiners were scheduled.
package validate
