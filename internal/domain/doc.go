// Package domain contains the entities shared by every layer of the client:
// the Todo and Profile types, the partial-update shape sent to the API, the
// display ordering policy for the todo list, and the error taxonomy that all
// adapters translate transport failures into.
package domain
