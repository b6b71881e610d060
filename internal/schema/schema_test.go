package schema

import "testing"

func TestEnumValidation(t *testing.T) {
	if !SkillCategoryProgramming.Valid() || SkillCategory("cooking?").Valid() {
		t.Fatal("技能分类校验不符")
	}
	if !AssetTypeCash.Valid() || AssetType("house").Valid() {
		t.Fatal("资产类型校验不符")
	}
	if !HobbyCategoryReading.Valid() || HobbyCategory("").Valid() {
		t.Fatal("爱好分类校验不符")
	}
	if !TraitTypeStrength.Valid() || TraitType("virtue").Valid() {
		t.Fatal("特质类型校验不符")
	}
}

func TestUpdateChangesOnlyIncludesSetFields(t *testing.T) {
	name := "Go"
	level := 2
	m := SkillUpdate{Name: &name, Level: &level}.Changes()

	if len(m) != 2 {
		t.Fatalf("len=%d, want 2", len(m))
	}
	if m["name"] != "Go" || m["level"] != 2 {
		t.Fatalf("changes=%v", m)
	}
	if _, ok := m["experience"]; ok {
		t.Fatal("未设置字段不应出现")
	}

	if len((SkillUpdate{}).Changes()) != 0 {
		t.Fatal("空更新应产生空映射")
	}
}

func TestJSONArrayValueAndScan(t *testing.T) {
	v, err := JSONArray{"a", "b"}.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if string(v.([]byte)) != `["a","b"]` {
		t.Fatalf("value=%s", v)
	}

	var out JSONArray
	if err := out.Scan(`["x","y"]`); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(out) != 2 || out[0] != "x" {
		t.Fatalf("out=%v", out)
	}

	var empty JSONArray
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("empty=%v, want 空数组", empty)
	}

	nilValue, err := JSONArray(nil).Value()
	if err != nil || nilValue != "[]" {
		t.Fatalf("nil Value=%v err=%v, want \"[]\"", nilValue, err)
	}
}
