package value

import "testing"

func TestMakeTagPacksBigEndian(t *testing.T) {
	tag := MakeTag('W', 'D', 'G', 'T')
	if got, want := uint32(tag), uint32(0x57444754); got != want {
		t.Fatalf("MakeTag('W','D','G','T') = 0x%08x, want 0x%08x", got, want)
	}
	if s := tag.String(); s != "WDGT" {
		t.Fatalf("String() = %q, want %q", s, "WDGT")
	}
}

func TestTagRoundTripsThroughString(t *testing.T) {
	for _, name := range []string{"GRUP", "MODL", "TEXT", "BNDS"} {
		tag := MakeTag(name[0], name[1], name[2], name[3])
		if got := tag.String(); got != name {
			t.Errorf("MakeTag(%q).String() = %q, want %q", name, got, name)
		}
	}
}

func TestKindStringCoversEveryVariant(t *testing.T) {
	kinds := []Kind{
		KindBool, KindInt, KindDouble, KindTag, KindVec2, KindVec3, KindVec4,
		KindBox2, KindString, KindBlob, KindBoolArray, KindIntArray,
		KindDoubleArray, KindVec2Array, KindVec3Array, KindVec4Array, KindBox2Array,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "" || seen[s] {
			t.Errorf("Kind(%d).String() = %q, unexpected or duplicate", k, s)
		}
		seen[s] = true
	}
}

func TestValueKindMatchesConcreteType(t *testing.T) {
	cases := []struct {
		v    Value
		want Kind
	}{
		{Bool(true), KindBool},
		{Int(42), KindInt},
		{Double(1.5), KindDouble},
		{MakeTag('A', 'B', 'C', 'D'), KindTag},
		{Vec2{1, 2}, KindVec2},
		{Vec3{1, 2, 3}, KindVec3},
		{Vec4{1, 2, 3, 4}, KindVec4},
		{Box2{Min: Vec2{0, 0}, Max: Vec2{1, 1}}, KindBox2},
		{String("hi"), KindString},
		{Blob{1, 2, 3}, KindBlob},
		{BoolArray{true, false}, KindBoolArray},
		{IntArray{1, 2}, KindIntArray},
		{DoubleArray{1.0, 2.0}, KindDoubleArray},
		{Vec2Array{{1, 2}}, KindVec2Array},
		{Vec3Array{{1, 2, 3}}, KindVec3Array},
		{Vec4Array{{1, 2, 3, 4}}, KindVec4Array},
		{Box2Array{{}}, KindBox2Array},
	}
	for _, c := range cases {
		if got := c.v.Kind(); got != c.want {
			t.Errorf("%#v.Kind() = %s, want %s", c.v, got, c.want)
		}
	}
}
