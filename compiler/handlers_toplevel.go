package compiler

import "edjecc/edje"

func requireImageSet(p *Parser, line int) *edje.ImageSet {
	if p.ip.imageSet == nil {
		p.fail(KindContext, line, "property used outside an image set")
	}
	return p.ip.imageSet
}

func requireStyle(p *Parser, line int) *edje.Style {
	if p.ip.style == nil {
		p.fail(KindContext, line, "property used outside a style")
	}
	return p.ip.style
}

func requireColorClass(p *Parser, line int) *edje.ColorClass {
	if p.ip.colorClass == nil {
		p.fail(KindContext, line, "property used outside a color_class")
	}
	return p.ip.colorClass
}

func requireSpectrum(p *Parser, line int) *edje.Spectrum {
	if p.ip.spectrum == nil {
		p.fail(KindContext, line, "property used outside a spectrum")
	}
	return p.ip.spectrum
}

func readRGBA(a *Args) edje.RGBA {
	return edje.RGBA{
		R: uint8(a.IntRange(0, 0, 255)),
		G: uint8(a.IntRange(1, 0, 255)),
		B: uint8(a.IntRange(2, 0, 255)),
		A: uint8(a.IntRange(3, 0, 255)),
	}
}

func init() {
	reg := func(path string, h statementHandler) { statementHandlers[path] = h }

	reg("externals.external", func(p *Parser, a *Args) { p.f.AddExternal(a.Str(0)) })

	reg("images.image", func(p *Parser, a *Args) {
		path := a.Str(0)
		source, quality := parseCompression(a, 1)
		p.f.AddImage(path, source, quality)
	})
	reg("images.set.name", func(p *Parser, a *Args) { p.ip.imageSet = p.f.AddImageSet(a.Str(0)) })
	reg("images.set.image", func(p *Parser, a *Args) {
		set := requireImageSet(p, 0)
		path := a.Str(0)
		source, quality := parseCompression(a, 1)
		entry := p.f.AddImage(path, source, quality)
		set.Entries = append(set.Entries, edje.ImageSetEntry{EntryID: edje.ImageID(entry.ID)})
	})
	reg("images.set.size", func(p *Parser, a *Args) {
		set := requireImageSet(p, 0)
		if len(set.Entries) == 0 {
			p.fail(KindContext, 0, "size given before an image in this set")
		}
		e := &set.Entries[len(set.Entries)-1]
		e.MinW, e.MinH, e.MaxW, e.MaxH = a.Int(0), a.Int(1), a.Int(2), a.Int(3)
		if e.MinW > e.MaxW || e.MinH > e.MaxH {
			p.fail(KindRange, 0, "image set size window: min must not exceed max")
		}
	})

	reg("fonts.font", func(p *Parser, a *Args) {
		if _, err := p.f.AddFont(a.Str(0), a.Str(1)); err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
	})

	reg("data.item", func(p *Parser, a *Args) { p.f.AddDataItem(a.Str(0), a.Str(1)) })
	reg("data.file", func(p *Parser, a *Args) { p.f.AddDataItemFile(a.Str(0), a.Str(1)) })

	reg("styles.style.name", func(p *Parser, a *Args) {
		s, err := p.f.AddStyle(a.Str(0))
		if err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
		p.ip.style = s
	})
	reg("styles.style.base", func(p *Parser, a *Args) {
		if err := requireStyle(p, 0).SetBase(a.Str(0)); err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
	})
	reg("styles.style.tag", func(p *Parser, a *Args) { requireStyle(p, 0).AddTag(a.Str(0), a.Str(1)) })

	reg("color_classes.color_class.name", func(p *Parser, a *Args) {
		c, err := p.f.AddColorClass(a.Str(0))
		if err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
		p.ip.colorClass = c
	})
	reg("color_classes.color_class.color", func(p *Parser, a *Args) { requireColorClass(p, 0).Main = readRGBA(a) })
	reg("color_classes.color_class.outline_color", func(p *Parser, a *Args) { requireColorClass(p, 0).Outline = readRGBA(a) })
	reg("color_classes.color_class.shadow_color", func(p *Parser, a *Args) { requireColorClass(p, 0).Shadow = readRGBA(a) })

	reg("spectra.spectrum.name", func(p *Parser, a *Args) {
		s, err := p.f.AddSpectrum(a.Str(0))
		if err != nil {
			p.fail(KindUniqueness, 0, "%s", err)
		}
		p.ip.spectrum = s
	})
	reg("spectra.spectrum.color", func(p *Parser, a *Args) {
		spec := requireSpectrum(p, 0)
		spec.Stops = append(spec.Stops, edje.SpectrumStop{Color: readRGBA(a), Distance: a.FloatRange(4, 0, 1)})
	})
}

// parseCompression reads the optional trailing compression token(s) of an
// image declaration: bare RAW/COMP/USER, or "LOSSY <quality>".
func parseCompression(a *Args, i int) (edje.ImageSourceKind, int) {
	if a.len() <= i {
		return edje.ImageInlineLossless, 0
	}
	switch a.Str(i) {
	case "RAW", "COMP":
		return edje.ImageInlineLossless, 0
	case "LOSSY":
		return edje.ImageInlineLossy, a.IntRange(i+1, 0, 100)
	case "USER":
		return edje.ImageExternalReference, 0
	default:
		return edje.ImageInlineLossless, 0
	}
}
