// Package rollerv1 declares the troller.v1 gRPC services.
//
// Messages travel as google.protobuf.Struct values. Each typed request and
// response here maps onto a Struct through its JSON field names, and int64
// totals and seeds are carried as decimal strings so they survive the
// Struct number type.
package rollerv1
