// Package service provides testify mocks of the domain service interfaces.
package service
