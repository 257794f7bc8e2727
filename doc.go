// Package swig compiles JSX components into C# classes for the Minimact
// server runtime, together with the template manifests the client uses to
// patch the DOM without a server round trip.
//
// # Pipeline
//
// A source file arrives either as a Babel/ESTree JSON document (.ast.json)
// or as .jsx/.tsx source, which CompileFile parses with the tree-sitter
// frontend in lib/jsx. Both yield the same ast.Program. Compile finds
// every component in it (functions whose binding name is capitalized) and
// runs each through the same stages:
//
//   - component.Assemble collects props, decomposes hook calls, classifies
//     locals and captures the returned JSX tree
//   - the template extractors derive text, attribute, loop, structural and
//     expression templates keyed by their position in the tree
//   - emit.Class renders the partial C# class
//   - manifest.Build and manifest.Encode produce the template manifest
//
// # Diagnostics
//
// Unrecognized shapes never abort compilation. A malformed hook call is a
// warning and the hook is skipped; an unsupported expression is an info
// note and generates a neutral value, and an unsupported statement is an
// info note and is omitted. Only structural validation errors,
// such as a <Plugin> without a name, fail a component, and then only that
// component:
//
//	results, err := swig.Compile(ctx, prog, swig.Options{Namespace: "App.Components"})
//	for _, r := range results {
//	    if swig.IsStructural(r.Err) {
//	        // r.Diagnostics explains what is missing
//	    }
//	}
//
// # Determinism
//
// Output is a pure function of the input and Options. The manifest's
// generatedAt comes from Options.GeneratedAt, so the generator stamps it
// with the source file's modification time and unchanged sources produce
// byte-identical files.
package swig
