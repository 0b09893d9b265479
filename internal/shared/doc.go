// Package shared groups helpers used by more than one layer of meddash.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- SampleCSV, a small November 2024 snapshot
//	- WriteFile, which places a fixture under t.TempDir
//	- BufferedSlogHandler and its assertions for checking log output
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteFile(t, "selected1.csv", testutil.SampleCSV())
//
//	    // build the component under test with logger and path
//	    testutil.AssertNoErrors(t, logs)
//	}
//
// Nothing under shared may import other meddash packages.
package shared
