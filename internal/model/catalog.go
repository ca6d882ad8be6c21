package model

// University 大学/院校，按名称唯一，首次引用时创建
// swagger:model University
type University struct {
	BaseModel
	Name      string   `gorm:"size:255;not null;uniqueIndex" json:"name"`
	ShortName string   `gorm:"size:50" json:"shortName"`
	Courses   []Course `gorm:"foreignKey:UniversityID" json:"courses,omitempty"`
}

func (University) TableName() string {
	return "universities"
}

// Course 课程/专业，同一所大学内名称唯一
// swagger:model Course
type Course struct {
	BaseModel
	Name         string    `gorm:"size:255;not null;uniqueIndex:idx_course_name_university" json:"name"`
	UniversityID uint      `gorm:"not null;uniqueIndex:idx_course_name_university;type:bigint unsigned" json:"universityId"`
	Subjects     []Subject `gorm:"foreignKey:CourseID" json:"subjects,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Subject 科目，同一课程内名称唯一
// swagger:model Subject
type Subject struct {
	BaseModel
	Name     string `gorm:"size:255;not null;uniqueIndex:idx_subject_name_course" json:"name"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_subject_name_course;type:bigint unsigned" json:"courseId"`
}

func (Subject) TableName() string {
	return "subjects"
}
