// Package mock provides test doubles for the ai interfaces.
//
// The mocks default to cheap deterministic behavior and allow custom
// behavior injection through function fields, including forced failures for
// exercising the failover path.
package mock
