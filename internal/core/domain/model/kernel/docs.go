// Package kernel contains shared value objects used across the delivery
// domain: identifiers, geographic coordinates, and monetary amounts. All
// types here are immutable and must be created through their constructors;
// zero values fail validation.
package kernel
