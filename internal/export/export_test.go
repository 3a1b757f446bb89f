package export

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gigaversity/gigaadmin/internal/admin"
	"github.com/gigaversity/gigaadmin/internal/institution"
	"github.com/gigaversity/gigaadmin/internal/student"
)

func readRows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	return rows
}

func TestWrite_Students(t *testing.T) {
	students := []student.Student{
		{ID: 1, Username: "asha", Email: "asha@gvi.edu", Institution: institution.Ref{ID: 2, Name: "GVI"}, IsActive: true, CanUpdateProfile: true},
		{ID: 2, Username: "ravi", Email: "ravi@gvi.edu", Institution: institution.Ref{ID: 2}, Department: "CSE", ProfileCompleted: true},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "Students", StudentColumns, students); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"Students"}) {
		t.Errorf("sheets = %v, want [Students]", got)
	}
	rows := readRows(t, f, "Students")
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	wantHeader := []string{"ID", "Username", "Email", "Institution", "Department", "Active", "Profile Completed", "Can Update Profile"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v", rows[0])
	}
	wantFirst := []string{"1", "asha", "asha@gvi.edu", "GVI", "", "Yes", "No", "Yes"}
	if !reflect.DeepEqual(rows[1], wantFirst) {
		t.Errorf("row 1 = %v, want %v", rows[1], wantFirst)
	}
	if rows[2][3] != "2" {
		t.Errorf("institution without a name = %q, want the id", rows[2][3])
	}
}

func TestWriteFile_Admins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.xlsx")
	admins := []admin.Admin{
		{ID: 4, Username: "dept", Role: admin.RoleDepartment, Department: "CSE", IsActive: true,
			Permissions: admin.PermissionNames{"view_department_analytics", "edit_assessments"}},
	}
	if err := WriteFile(path, "Admins", AdminColumns, admins); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()

	rows := readRows(t, f, "Admins")
	if rows[1][3] != "department" {
		t.Errorf("Type = %q, want department", rows[1][3])
	}
	if rows[1][7] != "view_department_analytics, edit_assessments" {
		t.Errorf("Permissions = %q", rows[1][7])
	}
}

func TestWrite_EmptyRowsKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "Institutions", InstitutionColumns, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows := readRows(t, f, "Institutions")
	if len(rows) != 1 || rows[0][0] != "ID" {
		t.Errorf("rows = %v, want only the header", rows)
	}
}

func TestWrite_NoColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := Write[student.Student](&buf, "Students", nil, nil); err == nil {
		t.Error("Write() should fail without columns")
	}
}
