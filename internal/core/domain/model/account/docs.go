// Package account contains the User aggregate: customers who create
// deliveries, drivers who carry them, and admins who oversee both. Password
// hashing and verification live here so that no other layer ever sees a
// plaintext password next to a stored hash.
package account
