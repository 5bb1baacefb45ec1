// Package loader turns type handles into a memoized, cycle-safe graph of
// specifications.
//
// On the first request for a type the loader registers a placeholder in its
// arena and only then runs the construction protocol against it:
//
//  1. class pass: contributors selecting FeatureObject run once
//  2. member pass: fields in declaration order, then actions (exported
//     methods left in the method pool that carry no convention prefix)
//  3. parameter pass: every parameter of every action, in order
//
// Nested loads requested by contributors return the in-progress node, so
// mutually referencing types terminate. Builds are serialized by one mutex;
// once a unit is built, reads are safe from many goroutines.
package loader
