// Package wire defines the JSON and YAML payloads exchanged with callers.
//
// Two collaborators name the giver fields differently: the synchronous
// assignment API uses employee_name/employee_email while the queue pipeline
// uses santa_name/santa_email. Decoding accepts either shape; encoding picks
// one through NewResponse, so the naming never reaches the generator.
package wire
