/*
Package dsl provides a fluent Go builder for Turing machine definitions.

It is an alternative to the text and YAML formats, useful for generating
machines programmatically and in tests.

Example usage:

	def, err := dsl.New().
		Start("q0").Accept("qA").Reject("qR").
		Alphabet('0', '1').
		State("q0").
			On('0').Right().To("q0").
			On('1').Right().To("qA").
		Build()
*/
package dsl
