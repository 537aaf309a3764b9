package apiclient

import (
	"fmt"
	"net/http"
)

// OperationName identifies a remote API operation. The set of names is
// closed and fixed at build time.
type OperationName string

const (
	OpLogin         OperationName = "Login"
	OpRegister      OperationName = "Register"
	OpLogout        OperationName = "Logout"
	OpGetProfile    OperationName = "GetProfile"
	OpUpdateProfile OperationName = "UpdateProfile"
)

// Operation describes how an operation maps onto the remote API: a URL
// template with optional ":param" placeholders and an HTTP method.
type Operation struct {
	URLTemplate string
	Method      string
}

// Operation registry. Paths are relative to the remote API base path.
var registry = map[OperationName]Operation{
	OpLogin:         {URLTemplate: "/auth/login", Method: http.MethodPost},
	OpRegister:      {URLTemplate: "/auth/register", Method: http.MethodPost},
	OpLogout:        {URLTemplate: "/auth/logout", Method: http.MethodPost},
	OpGetProfile:    {URLTemplate: "/user/profile", Method: http.MethodGet},
	OpUpdateProfile: {URLTemplate: "/user/profile", Method: http.MethodPut},
}

// Resolve looks up an operation by name.
func Resolve(name OperationName) (Operation, error) {
	op, ok := registry[name]
	if !ok {
		return Operation{}, fmt.Errorf("[Resolve] unknown operation %q", name)
	}
	return op, nil
}

// MustResolve looks up an operation by name and panics when it is absent.
// An unknown name is a programming error, not a runtime condition.
func MustResolve(name OperationName) Operation {
	op, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return op
}
