// Package physics implements the force model, collision response, boundary
// policy and initial seeding for the planet/asteroid simulation.
//
// Every function mutates a [dynamo.State] in place and takes the substep's
// time delta explicitly. Forces accumulate straight into velocity (the
// velocity half of a semi-implicit Euler step); the position half lives in
// package integrators.
//
//   - [ApplyPlanetForces]: star pull and planet-planet gravity
//   - [ApplyAsteroidForces]: star, planets, attractor and global gravity
//   - [ApplyMutualGravity]: short-range asteroid attraction over the grid
//   - [ResolveCollisions]: grid-based asteroid-asteroid contacts
//   - [ApplyBoundaries]: wall reflection and clamping
//   - [Seed]: preset planets plus an asteroid belt
//
// All arithmetic is float32. G is 1.
//
// # Guards
//
// Only three division guards exist: the planet star-distance floor of 1, the
// collision normal epsilon, and the auto-orbit distance floor. Everything
// else (zero substeps, negative radii) propagates as non-finite values.
package physics
