package gadgets

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GadgetsPlugin struct {
	ids *IdentityGenerator
}

func New() *GadgetsPlugin {
	return &GadgetsPlugin{ids: DefaultIdentityGenerator()}
}

func (p *GadgetsPlugin) ID() string { return "gadgets" }

func (p *GadgetsPlugin) Models() []interface{} {
	return []interface{}{
		&Gadget{},
	}
}

func (p *GadgetsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, gate fiber.Handler) {
	svc := NewGadgetService(NewGormStore(db), p.ids)
	handler := NewGadgetHandler(svc)
	handler.Mount(router, gate)
}
