// Package service_mocks holds gomock doubles of the ledger, goal and report services used by handler tests.
package service_mocks

//go:generate mockgen -source=../interfaces.go -destination=service_mocks.go -package=service_mocks
