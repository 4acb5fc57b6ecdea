// Package mock provides test doubles for the ai package interfaces.
// The doubles are hand-rolled with function fields for behavior injection
// and call counting; no mocking framework is used.
package mock
