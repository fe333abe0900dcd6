package library

// The QNL Metal template set. Default values are the fab-validated starting
// points for each class; positions and orientation are always present so a
// fresh component lands at the origin on layer 1 until placed.

func opts(pairs ...string) []Option {
	out := make([]Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Option{Key: pairs[i], Value: pairs[i+1]})
	}
	return out
}

var registry = []Template{
	{
		Class:       "Transmon",
		ShortName:   "transmon",
		Description: "Two-pocket transmon qubit",
		WidthOpt:    "width",
		HeightOpt:   "height",
		defaults: opts(
			"pos_x", "0um",
			"pos_y", "0um",
			"width", "535um",
			"height", "745um",
			"pocket_width", "135um",
			"pocket_height", "545um",
			"fillet", "5um",
			"pad_spacing", "65um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "Fluxonium",
		ShortName:   "fluxonium",
		Description: "Single-pocket fluxonium qubit",
		WidthOpt:    "width",
		HeightOpt:   "height",
		defaults: opts(
			"width", "475um",
			"height", "300um",
			"pos_x", "0um",
			"pos_y", "0um",
			"qubit_length", "100um",
			"pad_spacing", "75um",
			"fillet", "5um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "FluxLine",
		ShortName:   "fluxline",
		Description: "Tapered on-chip flux bias line",
		WidthOpt:    "taper_length",
		HeightOpt:   "starting_width",
		defaults: opts(
			"starting_width", "5um",
			"starting_gap", "8um",
			"end_width", "1um",
			"end_gap", "2um",
			"taper_length", "212um",
			"start_length", "0um",
			"pos_x", "0um",
			"pos_y", "0um",
			"layer", "1",
			"orientation", "0",
		),
	},
	{
		Class:       "Claw",
		ShortName:   "Claw",
		Description: "Claw-shaped CPW coupler",
		WidthOpt:    "base_length",
		HeightOpt:   "base_width",
		defaults: opts(
			"cpw_width", "10um",
			"cpw_gap", "20um",
			"base_length", "100um",
			"base_width", "20um",
			"finger_length", "100um",
			"finger_width", "20um",
			"gap", "5um",
			"cpw_length", "30um",
			"fillet", "5um",
			"pos_x", "0um",
			"pos_y", "0um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "CouplingPad",
		ShortName:   "CouplingPad",
		Description: "Rectangular CPW coupling pad",
		WidthOpt:    "pad_length",
		HeightOpt:   "pad_width",
		defaults: opts(
			"cpw_width", "20um",
			"cpw_gap", "10um",
			"pad_length", "300um",
			"pad_width", "20um",
			"gap", "5um",
			"cpw_length", "50um",
			"pos_x", "0um",
			"pos_y", "0um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "Bandage",
		ShortName:   "bandage",
		Description: "Rectangular bandage patch for junction contacts",
		WidthOpt:    "width",
		HeightOpt:   "height",
		defaults: opts(
			"width", "100um",
			"height", "200um",
			"pos_x", "0um",
			"pos_y", "0um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "AlignmentMarker",
		ShortName:   "alignment_marker",
		Description: "Ebeam alignment marker with exclusion buffer",
		WidthOpt:    "size",
		HeightOpt:   "size",
		defaults: opts(
			"size", "20um",
			"buffer", "220um",
			"pos_x", "0um",
			"pos_y", "0um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "ChipBoundary",
		ShortName:   "chip_boundary",
		Description: "Dicing boundary frame with corner marks",
		WidthOpt:    "lx",
		HeightOpt:   "ly",
		defaults: opts(
			"lx", "10mm",
			"ly", "10mm",
			"thick", "50um",
			"corner_size", "250um",
			"no_cheese", "30um",
			"pos_x", "0um",
			"pos_y", "0um",
			"layer", "0",
		),
	},
	{
		Class:       "InlineIDC",
		ShortName:   "InlineIDC",
		Description: "Inline interdigitated capacitor",
		WidthOpt:    "taper_length",
		HeightOpt:   "taper_gap",
		defaults: opts(
			"cpw_width", "17.5um",
			"cpw_gap", "30um",
			"taper_length", "200um",
			"taper_gap", "87.5um",
			"fingers_num", "18",
			"fingers_width", "5um",
			"fingers_length", "200um",
			"fingers_horizontal_gap", "5um",
			"fingers_vertical_gap", "10um",
			"pos_x", "0um",
			"pos_y", "0um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "JunctionArray",
		ShortName:   "JunctionArray",
		Description: "Linear array of Josephson junctions",
		WidthOpt:    "jx",
		HeightOpt:   "jy",
		defaults: opts(
			"n", "20",
			"jx", "100um",
			"jy", "10um",
			"wx", "20um",
			"wy", "10um",
			"undercut", "15um",
			"orientation", "0",
			"pos_x", "0um",
			"pos_y", "0um",
			"layer", "1",
			"undercut_layer", "2",
			"alternating_layer", "2",
		),
	},
	{
		Class:       "JunctionLead",
		ShortName:   "JunctionLead",
		Description: "Tapered lead from pad to junction",
		WidthOpt:    "outer_length",
		HeightOpt:   "outer_width",
		defaults: opts(
			"outer_length", "500um",
			"outer_width", "250um",
			"inner_length", "250um",
			"inner_width", "125um",
			"taper_length", "700um",
			"fillet", "0um",
			"extension", "0um",
			"pos_x", "0um",
			"pos_y", "0um",
			"orientation", "0",
			"layer", "1",
		),
	},
	{
		Class:       "ManhattanJunction",
		ShortName:   "ManhattanJunction",
		Description: "Manhattan-style crossed junction",
		WidthOpt:    "junction_hl",
		HeightOpt:   "junction_vl",
		defaults: opts(
			"junction_hw", "10um",
			"junction_vw", "10um",
			"junction_hl", "100um",
			"junction_vl", "100um",
			"wire_hw", "5um",
			"wire_vw", "5um",
			"taper_length", "20um",
			"extra_hl", "10um",
			"extra_vl", "50um",
			"contact_nw", "0.5",
			"contact_ww", "1",
			"contact_nl", "2um",
			"contact_wl", "5um",
			"undercut_l", "150um",
			"undercut_w", "30um",
			"orientation", "0",
			"pos_x", "0um",
			"pos_y", "0um",
			"layer", "1",
			"undercut_layer", "2",
		),
	},
	{
		Class:       "BridgeFreeJunction",
		ShortName:   "bridgefreejunction",
		Description: "Bridge-free Josephson junction",
		WidthOpt:    "width",
		HeightOpt:   "height",
		defaults: opts(
			"width", "100um",
			"height", "100um",
			"wire_width", "5um",
			"wire_x_offset", "5um",
			"wire_y_offset", "5um",
			"pos_x", "0um",
			"pos_y", "0um",
			"fillet", "0um",
			"undercut", "25um",
			"orientation", "0",
			"origin", "upper right",
			"layer", "1",
			"undercut_layer", "2",
		),
	},
}
