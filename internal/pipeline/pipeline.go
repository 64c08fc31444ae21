package pipeline

// Pipeline is an ordered sequence of compiler stages run over one Context.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline from its stages, in run order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, stopping early only when a stage
// returns a hard error (a condition outside the diagnostic model, e.g. a
// read failure). Stages that merely want to skip their own work once the
// Context already carries an Error-severity diagnostic check ctx.HasErrors()
// themselves (spec §4.7: transpilation is the stage that does this).
func (p *Pipeline) Run(ctx *Context) (*Context, error) {
	for _, proc := range p.processors {
		if err := proc.Process(ctx); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}
