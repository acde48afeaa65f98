package apidata

import (
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/adaptgen/errors"
	"github.com/teranos/adaptgen/logger"
	"github.com/teranos/adaptgen/model"
)

// ToModel builds the mutable declaration tree for pkg. Annotations are
// attached to the declarations they were authored on; nothing is applied.
func (p *Package) ToModel() (*model.Package, error) {
	if p.Name == "" {
		return nil, errors.New("annotated package has no name")
	}
	if p.Version != "" {
		if _, err := semver.NewVersion(p.Version); err != nil {
			logger.Warnw("Package version is not semantic",
				"package", p.Name,
				"version", p.Version,
				logger.FieldError, err)
		}
	}

	pkg := model.NewPackage(p.Name)
	pkg.Distribution = p.Distribution
	pkg.Version = p.Version
	attach(pkg, p.Annotations)

	for _, m := range p.Modules {
		mod, err := m.toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "module %s", m.Name)
		}
		pkg.Modules.Add(mod)
	}
	return pkg, nil
}

func (m *Module) toModel() (*model.Module, error) {
	if m.Name == "" {
		return nil, errors.New("module has no name")
	}
	mod := model.NewModule(m.Name)
	for _, imp := range m.Imports {
		mod.Imports = append(mod.Imports, model.Import{Module: imp.Module, Alias: imp.Alias})
	}
	for _, imp := range m.FromImports {
		mod.FromImports = append(mod.FromImports, model.FromImport{
			Module:      imp.Module,
			Declaration: imp.Declaration,
			Alias:       imp.Alias,
		})
	}
	attach(mod, m.Annotations)

	for _, c := range m.Classes {
		cls, err := c.toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name)
		}
		mod.Classes.Add(cls)
		checkQualifiedName(cls, c.QualifiedName)
	}
	for _, f := range m.Functions {
		fn, err := f.toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "function %s", f.Name)
		}
		mod.Functions.Add(fn)
		checkQualifiedName(fn, f.QualifiedName)
	}
	return mod, nil
}

func (c *Class) toModel() (*model.Class, error) {
	cls := model.NewClass(c.Name)
	cls.Decorators = c.Decorators
	cls.Superclasses = c.Superclasses
	cls.IsPublic = boolOr(c.IsPublic, true)
	cls.Description = c.Description
	cls.FullDocstring = c.FullDocstring
	attach(cls, c.Annotations)

	for _, f := range c.Methods {
		fn, err := f.toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", f.Name)
		}
		cls.Methods.Add(fn)
	}
	return cls, nil
}

func (f *Function) toModel() (*model.Function, error) {
	fn := model.NewFunction(f.Name)
	fn.Decorators = f.Decorators
	fn.IsPublic = boolOr(f.IsPublic, true)
	fn.Description = f.Description
	fn.FullDocstring = f.FullDocstring
	attach(fn, f.Annotations)

	for _, p := range f.Parameters {
		param, err := p.toModel()
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", p.Name)
		}
		fn.Parameters.Add(param)
	}
	for _, r := range f.Results {
		res := model.NewResult(r.Name)
		if r.Type != "" {
			res.Type = model.StringifiedType{Name: r.Type}
		}
		res.TypeInDocs = r.TypeInDocs
		res.Description = r.Description
		attach(res, r.Annotations)
		fn.Results.Add(res)
	}
	return fn, nil
}

func (p *Parameter) toModel() (*model.Parameter, error) {
	param := model.NewParameter(p.Name)
	if p.AssignedBy != "" {
		a, err := model.ParseParameterAssignment(p.AssignedBy)
		if err != nil {
			return nil, err
		}
		param.Assignment = a
	}
	if p.DefaultValue != nil {
		param.SetDefault(*p.DefaultValue)
	}
	if p.Type != "" {
		param.Type = model.StringifiedType{Name: p.Type}
	}
	param.TypeInDocs = p.TypeInDocs
	param.IsPublic = boolOr(p.IsPublic, true)
	param.Description = p.Description
	attach(param, p.Annotations)
	return param, nil
}

func attach(d model.Annotated, annotations []Annotation) {
	for _, a := range annotations {
		if a.Annotation != nil {
			d.AddAnnotation(a.Annotation)
		}
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// checkQualifiedName logs declarations whose recorded qualified name does not
// match their position in the tree. The tree position wins.
func checkQualifiedName(d model.Declaration, recorded string) {
	if recorded == "" {
		return
	}
	if got := model.QualifiedName(d); got != recorded {
		logger.Debugw("Qualified name differs from tree position",
			logger.FieldQualifiedName, recorded,
			"computed", got)
	}
}
