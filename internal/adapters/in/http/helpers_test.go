package http_test

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func mustUUID(s string) openapi_types.UUID {
	var id openapi_types.UUID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		panic(err)
	}
	return id
}

func ptr[T any](v T) *T {
	return &v
}
