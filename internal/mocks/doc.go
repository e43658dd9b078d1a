// Package mocks provides centralized mock implementations for testing.
//
// Each mock has one function field per interface method. A nil field makes
// the method return zero values, so tests only set what they exercise:
//
//	projects := &mocks.MockProjectService{
//	    GetFn: func(ctx context.Context, id, ownerID int64) (*service.ProjectDTO, error) {
//	        return nil, service.ErrNotFound
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Add a compile-time assertion that the mock satisfies the interface
package mocks
