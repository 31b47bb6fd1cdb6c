// Package schema declares the entities a query can be built against.
//
// An Entity is a named record shape with an ordered list of fields. A field
// is either a Column (a scalar leaf with a value Kind) or a Relationship (a
// reference to another entity, to-one or to-many). Every field has a local
// identifier, used when building paths, and a remote name, used when
// rendering query text.
//
// Relationship targets may be late-bound with Ref, naming the related entity
// instead of pointing at it. Ref targets are looked up in the owning
// entity's Registry the first time the relationship is traversed, so two
// entities may reference each other regardless of declaration order:
//
//	reg := schema.NewRegistry()
//	child := schema.Define("Child",
//	    schema.Integer("id", "Id"),
//	    schema.ToOne("teacher", "Teacher", schema.Ref("Teacher")),
//	)
//	teacher := schema.Define("Teacher",
//	    schema.Integer("id", "Id"),
//	    schema.ToMany("students", "Students", child),
//	)
//	reg.MustRegister(child, teacher)
//
// Entities are immutable once registered and safe for concurrent readers.
package schema
