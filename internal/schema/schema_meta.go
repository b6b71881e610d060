package schema

// SchemaMeta 记录数据库结构版本，迁移时作为升级门闸
type SchemaMeta struct {
	ID            int64 `gorm:"primaryKey"`
	SchemaVersion int   `gorm:"default:0"`
}

// TableName 指定表名
func (SchemaMeta) TableName() string {
	return "schema_meta"
}
