package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Catalog
	&Product{},
	&Category{},
	&Attribute{},
	&ProductCategory{},
	&ProductAttribute{},
	&ProductIcon{},
	&ProductImage{},
}
