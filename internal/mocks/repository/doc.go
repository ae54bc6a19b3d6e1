// Package repository provides testify mocks of the domain repository interfaces.
package repository
