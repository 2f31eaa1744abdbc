// Package mock provides the in-process test double for the transport layer.
//
// A Transport from this package never touches the network: every Send is
// matched against handlers registered by the test, and a request no handler
// claims fails hard with *UnhandledRequestError. That failure mode is the
// point: a test suite for a partner integration must never fall through to
// live partner infrastructure.
//
// Lifecycle follows a scoped-acquisition pattern:
//
//	mt := mock.Listen()
//	defer mt.Close()
//
//	mt.Register(http.MethodGet, "/companies", mock.JSON(200, companies))
//	// ... test ...
//	mt.Reset() // between independent test cases
//
// Reset clears handlers between tests so canned responses never leak across
// cases; Close releases the transport at suite end, after which Send refuses
// further requests.
package mock
