// Package optimize builds and solves the technology transition plan. A
// Model holds the structural template shared by all scenarios, a Composer
// prices its columns under one carbon price trajectory and a Runner solves
// the template once per scenario, collecting per-scenario results.
package optimize
