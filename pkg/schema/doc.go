// Package schema describes and checks the expected shape of partner API
// responses.
//
// A Schema is a deliberately partial view of a response: it declares only the
// fields the caller actually consumes. Undeclared fields pass through
// untouched, because legacy partners add and remove fields without notice and
// a schema that rejected every surprise would break on every deploy. Declared
// fields are checked strictly: type, presence, nullability, numeric bounds,
// and string formats each produce a distinct Violation naming the field path.
//
// Schemas are declared field by field:
//
//	companies := schema.Array(&schema.Field{
//	    Type: schema.TypeObject,
//	    Properties: map[string]*schema.Field{
//	        "id":        {Type: schema.TypeString, Required: true, Format: "uuid"},
//	        "tradeName": {Type: schema.TypeString, Required: true},
//	        "employees": {Type: schema.TypeInteger, Required: true, Min: schema.Float(0)},
//	    },
//	})
//
// or compiled from a raw JSON Schema document via FromJSONSchema.
//
// A Registry associates exactly one Schema with each operation name and is
// read-only after registration, so concurrent calls need no locking.
package schema
