// Package service contains the application service layer. Services own the
// business workflows (registration, login, session revocation, task CRUD,
// account cascade delete, avatar processing) and orchestrate the stores,
// the auth primitives and the event emitter. HTTP handlers stay thin and
// delegate here.
package service
