// Package geom models linear implicit-equation primitives: a line in the
// plane and a hyperplane in 4-space. Entities share one contract (coefficient
// management, point containment, distance, validity, proportional similarity,
// cloning) and one lifecycle (active until disposed, one-way). A Collection
// owns entities added to it and disposes them on Close.
package geom
