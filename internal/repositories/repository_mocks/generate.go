// Package repository_mocks holds gomock doubles of the transaction and goal stores.
package repository_mocks

//go:generate mockgen -source=../interfaces.go -destination=repository_mocks.go -package=repository_mocks
