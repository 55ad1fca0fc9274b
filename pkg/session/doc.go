// Package session ties a compiled catalog to a broker.
//
// A Session owns the forest compiled from its catalog, a subscription
// registry for local listeners, and a broker Client. Local subscriptions are
// grouped by (path, fields); the first subscription in a group attaches one
// broker subscription, and the last one to leave detaches it. Closing the
// session releases the forest and every subscription together.
package session
