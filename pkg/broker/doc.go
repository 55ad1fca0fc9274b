// Package broker defines the remote signal broker a session talks to and
// provides an in-process implementation.
//
// A broker stores one datapoint per path and field (VALUE, ACTUATOR_TARGET)
// and serves node metadata (METADATA) from the compiled catalog. Clients
// fetch and update datapoints and subscribe listeners to paths; a
// subscription on a branch covers every descendant.
//
// Memory is the in-process broker. It is used by sessions that are not
// given a Client, and in tests. The mocks subpackage holds a generated
// testify mock of Client.
package broker
