// Package queries contains the read side of the use-case layer. List and
// aggregate queries run raw SQL over the read connection for performance;
// detail queries that need full aggregate state go through the repositories.
package queries
