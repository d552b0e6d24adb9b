package opendata

import "github.com/reoring/opendata/i18n"

// TypeMatched reports whether actual has the same shape as expected. Composite
// types match when they declare the same attribute-name set and every
// attribute type matches recursively; composite names and descriptions are
// not compared, since a type may have been rebuilt by another process.
// Simple types match by name.
func TypeMatched(expected, actual OpenType) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	if expected == actual {
		return true
	}
	switch et := expected.(type) {
	case *CompositeType:
		at, ok := actual.(*CompositeType)
		if !ok || len(et.items) != len(at.items) {
			return false
		}
		for _, it := range et.items {
			other := at.Type(it.name)
			if other == nil || !TypeMatched(it.typ, other) {
				return false
			}
		}
		return true
	case *SimpleType:
		at, ok := actual.(*SimpleType)
		return ok && et.name == at.name
	}
	return false
}

// MatchIssues runs the same comparison as TypeMatched but reports every
// difference. A nil result means the types match.
func MatchIssues(expected, actual *CompositeType) Issues {
	if expected == actual {
		return nil
	}
	if actual == nil {
		return singleIssue(CodeNilInput, i18n.T(CodeNilInput, nil))
	}
	return matchComposite(nil, Root(), expected, actual)
}

func matchComposite(dst Issues, at PathRef, expected, actual *CompositeType) Issues {
	for _, it := range expected.items {
		p := at.Field(it.name)
		other := actual.Type(it.name)
		if other == nil {
			dst = AppendIssues(dst, p.Issue(CodeRequired, i18n.T(CodeRequired, nil)))
			continue
		}
		ec, eok := it.typ.(*CompositeType)
		ac, aok := other.(*CompositeType)
		if eok && aok {
			dst = matchComposite(dst, p, ec, ac)
			continue
		}
		if !TypeMatched(it.typ, other) {
			dst = AppendIssues(dst, p.Issue(CodeInvalidType,
				i18n.T(CodeInvalidType, map[string]string{"expected": it.typ.TypeName(), "got": other.TypeName()}),
				"expected", it.typ.TypeName(), "got", other.TypeName()))
		}
	}
	for _, k := range actual.keys {
		if !expected.ContainsKey(k) {
			dst = AppendIssues(dst, at.Field(k).Issue(CodeUnknownKey, i18n.T(CodeUnknownKey, nil)))
		}
	}
	return dst
}
