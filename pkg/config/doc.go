/*
Package config loads, overrides and validates webclean settings.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	  +--------+-------+-------+--------+
	  |        |               |        |
	+-+--+  +--+--+        +---+--+  +--+---+
	|YAML|  | HCL |        | JSON |  | TOML |
	+----+  +-----+        +------+  +------+

🎯 Purpose:
- Turns a config file, flags, environment and prompts into one Config
- Normalizes enumerated values (format, minifier, backup policy)
- Hands pipelines their clean.Options

🔄 Flow:
1. Start from Default()
2. Overlay a config file picked by extension (Load)
3. Overlay changed flags and WEBCLEAN_ environment variables (ApplyOverrides)
4. Or ask everything interactively (Interactive)
5. Validate

⚡ Precedence:
flag > environment > config file > default. A flag left at its default never
overrides the file.

🔍 Example:

	cfg, err := config.Load(ctx, "webclean.yaml")
	if err != nil {
		return err
	}
	config.ApplyOverrides(cfg, v)
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts := cfg.CleanOptions()
*/
package config
