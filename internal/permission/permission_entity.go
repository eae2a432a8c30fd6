package permission

import (
	"fmt"
	"time"

	"go-erp/internal/domain"
)

type Capability string

const (
	InventoryView Capability = "inventory_view"
	InventoryEdit Capability = "inventory_edit"
	OrderView     Capability = "order_view"
	OrderCreate   Capability = "order_create"
	OrderApprove  Capability = "order_approve"
	StockIn       Capability = "stock_in"
	StockOut      Capability = "stock_out"
	ReportsView   Capability = "reports_view"
	UserManage    Capability = "user_manage"
)

// AllCapabilities lists the nine flags in display order.
var AllCapabilities = []Capability{
	InventoryView, InventoryEdit,
	OrderView, OrderCreate, OrderApprove,
	StockIn, StockOut,
	ReportsView, UserManage,
}

func ParseCapability(s string) (Capability, error) {
	for _, c := range AllCapabilities {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown capability %q", s)
}

// Label is the Korean name shown in the detail editor.
func (c Capability) Label() string {
	switch c {
	case InventoryView:
		return "재고 조회"
	case InventoryEdit:
		return "재고 수정"
	case OrderView:
		return "주문 조회"
	case OrderCreate:
		return "주문 생성"
	case OrderApprove:
		return "주문 승인"
	case StockIn:
		return "입고 처리"
	case StockOut:
		return "출고 처리"
	case ReportsView:
		return "보고서 조회"
	case UserManage:
		return "사용자 관리"
	}
	return string(c)
}

type Capabilities struct {
	InventoryView bool `gorm:"column:inventory_view" json:"inventory_view"`
	InventoryEdit bool `gorm:"column:inventory_edit" json:"inventory_edit"`
	OrderView     bool `gorm:"column:order_view" json:"order_view"`
	OrderCreate   bool `gorm:"column:order_create" json:"order_create"`
	OrderApprove  bool `gorm:"column:order_approve" json:"order_approve"`
	StockIn       bool `gorm:"column:stock_in" json:"stock_in"`
	StockOut      bool `gorm:"column:stock_out" json:"stock_out"`
	ReportsView   bool `gorm:"column:reports_view" json:"reports_view"`
	UserManage    bool `gorm:"column:user_manage" json:"user_manage"`
}

func (c *Capabilities) field(name Capability) *bool {
	switch name {
	case InventoryView:
		return &c.InventoryView
	case InventoryEdit:
		return &c.InventoryEdit
	case OrderView:
		return &c.OrderView
	case OrderCreate:
		return &c.OrderCreate
	case OrderApprove:
		return &c.OrderApprove
	case StockIn:
		return &c.StockIn
	case StockOut:
		return &c.StockOut
	case ReportsView:
		return &c.ReportsView
	case UserManage:
		return &c.UserManage
	}
	return nil
}

func (c Capabilities) Has(name Capability) bool {
	f := c.field(name)
	return f != nil && *f
}

// With returns a copy with exactly one flag changed.
func (c Capabilities) With(name Capability, value bool) Capabilities {
	if f := c.field(name); f != nil {
		*f = value
	}
	return c
}

// Diff lists the flags where c differs from base, with c's value.
func (c Capabilities) Diff(base Capabilities) map[Capability]bool {
	out := make(map[Capability]bool)
	for _, name := range AllCapabilities {
		if v := c.Has(name); v != base.Has(name) {
			out[name] = v
		}
	}
	return out
}

// Record is the persisted row in the permissions table. Role is the template,
// Capabilities the effective flags.
type Record struct {
	EmployeeID   int64       `gorm:"column:employee_id;primaryKey;autoIncrement:false"`
	Role         domain.Role `gorm:"column:role"`
	Capabilities `gorm:"embedded"`
	UpdatedBy    int64     `gorm:"column:updated_by"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "permissions"
}

// Permission is the resolved view of one employee's authorization.
type Permission struct {
	EmployeeID   int64
	EmployeeName string
	Department   string
	Role         domain.Role
	Capabilities Capabilities
	Persisted    bool
}

// Customized reports whether the effective flags diverge from the role template.
func (p Permission) Customized() bool {
	return p.Capabilities != CapabilitiesFor(p.Role)
}
