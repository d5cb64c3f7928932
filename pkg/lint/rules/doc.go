// Package rules provides the built-in lint rules for mdrefcheck.
//
// # Rules
//
//   - REF001: no-undefined-references - References must resolve to a
//     link reference definition or footnote definition
//
// REF001 is also accepted under its alias "undefined-references".
//
// # Options
//
// REF001 reads two options from its rule configuration:
//
//	rules:
//	  no-undefined-references:
//	    options:
//	      allow:
//	        - "x"
//	        - source: "^todo-"
//	          flags: "i"
//	      allow_shortcut_link: false
//
// Literal allow entries are normalized like labels before comparison.
// Patterns are ECMAScript regular expressions matched against the
// normalized identifier. A pattern without flags ignores case; an explicit
// empty flags string matches case-sensitively.
//
// # Empty labels
//
// Brackets whose label normalizes to nothing, such as "[]", "[ ]" and
// "[][]", are never reported.
//
// # Registration
//
// Rules are registered with lint.DefaultRegistry during init, which also
// publishes rule metadata to config.DefaultRuleInfoProvider for the
// starter configuration file.
package rules
