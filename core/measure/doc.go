// Package measure is the measurement-algorithm framework: capability
// interfaces for centroid, shape and flux estimation, a generic name
// registry with stable tags, typed error kinds, and the builtin naive
// estimators.
//
// Algorithms are constructed only through the registries, selected by their
// registered name:
//
//	c, err := measure.NewCentroider("centroid.naive", nil)
//	if err != nil {
//	    return err
//	}
//	cen, err := measure.ApplyCentroid(c, img, 24.0, 31.5, nil, sky)
//
// Variants register themselves on package init; registration is idempotent
// so repeated imports cannot conflict.
package measure
