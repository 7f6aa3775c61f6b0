// Package wpekit configures how a layout-test harness launches and drives
// the WPE embedded browser target: it selects the test driver, computes the
// baseline and expectations search orders, builds process environments, and
// locates and launches a browser executable for viewing results manually.
//
// wpekit does not run tests, compare results, or spawn processes itself;
// process execution is delegated to the runner package.
package wpekit
