package seed

import "github.com/breeew/folio-api/pkg/types"

// 首次访问时使用的默认内容，每次调用都返回新的切片

func CampusAlbums() []types.Album {
	return []types.Album{
		{
			ID:          "c1",
			Title:       "微电影《青春》拍摄",
			Location:    "南门大草坪",
			Date:        "2024.04.10",
			CoverURL:    "https://picsum.photos/seed/movie/800/800",
			Description: "大学生电影节参赛作品，担任导演与剪辑。连续熬夜三天的成果。",
			Likes:       24,
			Images: []string{
				"https://picsum.photos/seed/mov1/1920/1080",
				"https://picsum.photos/seed/mov2/1920/1080",
				"https://picsum.photos/seed/mov3/1920/1080",
			},
		},
		{
			ID:          "c2",
			Title:       "秋日运动会",
			Location:    "北校区体育场",
			Date:        "2023.10.15",
			CoverURL:    "https://picsum.photos/seed/sports/800/800",
			Description: "挥洒汗水的午后，记录 4x100 接力的精彩瞬间。",
			Likes:       18,
			Images: []string{
				"https://picsum.photos/seed/run1/800/600",
				"https://picsum.photos/seed/run2/800/1200",
				"https://picsum.photos/seed/run3/800/800",
			},
		},
		{
			ID:          "c3",
			Title:       "社团音乐节",
			Location:    "学生活动中心",
			Date:        "2023.12.24",
			CoverURL:    "https://picsum.photos/seed/music/800/800",
			Description: "吉他社的圣诞专场演出。",
			Likes:       45,
			Images: []string{
				"https://picsum.photos/seed/mus1/800/600",
				"https://picsum.photos/seed/mus2/800/800",
			},
		},
	}
}

func WorldAlbums() []types.Album {
	return []types.Album{
		{
			ID:          "w1",
			Title:       "寻找富士山",
			Location:    "日本 · 河口湖",
			Date:        "2023.08.10",
			CoverURL:    "https://picsum.photos/seed/fuji/800/1000",
			Description: "在云层散开的那一刻，看到了完美的锥形山体。",
			Likes:       102,
			Images: []string{
				"https://picsum.photos/seed/fuji1/800/1200",
				"https://picsum.photos/seed/fuji2/800/600",
				"https://picsum.photos/seed/fuji3/800/800",
			},
		},
		{
			ID:          "w2",
			Title:       "大漠孤烟",
			Location:    "中国 · 敦煌",
			Date:        "2022.10.05",
			CoverURL:    "https://picsum.photos/seed/desert/800/1000",
			Description: "骑着骆驼穿越鸣沙山，感受千年的苍茫。",
			Likes:       88,
			Images: []string{
				"https://picsum.photos/seed/des1/800/1200",
				"https://picsum.photos/seed/des2/800/800",
			},
		},
	}
}

func Albums(section types.AlbumSection) []types.Album {
	if section == types.SECTION_WORLD {
		return WorldAlbums()
	}
	return CampusAlbums()
}

func KnowledgeItems() []types.KnowledgeItem {
	return []types.KnowledgeItem{
		{
			ID:       "ic-1",
			Title:    "Floorplanning (布局规划)",
			Content:  "Floorplanning 是数字后端设计的第一步，也是最关键的一步。它决定了芯片的面积（Die Size）、IO 单元的位置、Macro（RAM/ROM/IP）的摆放以及电源网络（Power Grid）的规划。良好的 Floorplan 可以极大减少后期的布线拥塞和时序问题。",
			Date:     "2024-01-01",
			Category: "IC",
			Tags:     []string{"Backend", "Floorplan"},
		},
		{
			ID:       "ic-2",
			Title:    "Placement (标准单元放置)",
			Content:  "在 Floorplan 确定后，工具会自动将标准单元（Standard Cells）放置在 Core 区域。主要目标是最小化总线长（Wirelength）和拥塞（Congestion），同时满足时序约束。",
			Date:     "2024-01-02",
			Category: "IC",
			Tags:     []string{"Backend", "Placement"},
		},
		{
			ID:       "ic-3",
			Title:    "CTS (时钟树综合)",
			Content:  "Clock Tree Synthesis 的目标是将时钟信号均匀地分发到芯片中的每一个时序单元（Flip-Flop）。关键指标包括 Skew（时钟偏差）和 Latency（延迟）。CTS 质量直接影响芯片的主频和保持时间（Hold Time）。",
			Date:     "2024-01-03",
			Category: "IC",
			Tags:     []string{"Backend", "CTS"},
		},
		{
			ID:       "ic-4",
			Title:    "Routing (布线)",
			Content:  "布线阶段将所有逻辑连接（Netlist）转化为实际的金属连线。分为 Global Routing（全局布线）和 Detail Routing（详细布线）。此阶段最容易出现 DRC 违例，如短路（Short）或开路（Open）。",
			Date:     "2024-01-04",
			Category: "IC",
			Tags:     []string{"Backend", "Routing"},
		},
		{
			ID:       "ic-5",
			Title:    "STA (静态时序分析)",
			Content:  "STA 不依赖于测试向量，而是通过数学方法穷举所有时序路径。主要检查 Setup Time（建立时间）和 Hold Time（保持时间）。后端工程师需要修复所有违例（Violation）。",
			Date:     "2024-01-05",
			Category: "IC",
			Tags:     []string{"Backend", "STA", "Timing"},
		},
		{
			ID:       "ic-6",
			Title:    "Physical Verification (DRC/LVS)",
			Content:  "DRC (Design Rule Check) 检查版图是否符合晶圆厂的制造规则（如最小线宽、间距）。LVS (Layout Versus Schematic) 检查版图的连接关系是否与网表一致。",
			Date:     "2024-01-06",
			Category: "IC",
			Tags:     []string{"Backend", "Signoff"},
		},
		{
			ID:       "ic-7",
			Title:    "IR Drop (电压降分析)",
			Content:  "随着工艺节点缩小，线阻增加，电源网络上的电压降不可忽视。IR Drop 过大可能导致逻辑翻转速度变慢（影响 Setup）甚至功能错误。需要使用 Redhawk 等工具进行动态分析。",
			Date:     "2024-01-07",
			Category: "IC",
			Tags:     []string{"Backend", "Power"},
		},
		{
			ID:       "ic-8",
			Title:    "Standard Cell Characterization (K库)",
			Content:  "K库流程是使用 SPICE 仿真工具（如 Liberate）对标准单元进行特征化，生成 .lib 文件。这包含时序（Timing）、功耗（Power）和噪声（Noise）信息，供后端工具使用。",
			Date:     "2024-01-08",
			Category: "IC",
			Tags:     []string{"K-Lib", "Standard Cell"},
		},
		{
			ID:       "ic-9",
			Title:    "PVT Corners (工艺角)",
			Content:  "芯片需要在不同的工艺（Process）、电压（Voltage）和温度（Temperature）下工作。K库需要覆盖 SS（Slow-Slow）、FF（Fast-Fast）和 TT（Typical）等多个 Corner，以确保芯片在最恶劣环境下也能工作。",
			Date:     "2024-01-09",
			Category: "IC",
			Tags:     []string{"K-Lib", "PVT"},
		},
		{
			ID:       "ic-10",
			Title:    "Antenna Effect (天线效应)",
			Content:  "在制造过程中，长金属线会收集电荷。如果电荷积累过多，会击穿连接的栅极氧化层。解决方法包括跳线（Jumper）到高层金属或插入二极管（Diode）。",
			Date:     "2024-01-10",
			Category: "IC",
			Tags:     []string{"Backend", "Reliability"},
		},
		{
			ID:       "ai-1",
			Title:    "机器学习 vs 深度学习",
			Content:  "机器学习（ML）是 AI 的子集，使用算法解析数据并做出预测。深度学习（DL）是 ML 的子集，特指使用多层神经网络（Neural Networks）来模拟人脑学习过程的技术，擅长处理图像和文本等非结构化数据。",
			Date:     "2024-02-01",
			Category: "AI",
			Tags:     []string{"Basics"},
		},
		{
			ID:       "ai-2",
			Title:    "Neural Networks (神经网络)",
			Content:  "神经网络由输入层、隐藏层和输出层组成。每个神经元都有权重（Weight）和偏置（Bias）。通过反向传播算法（Backpropagation）计算梯度，并使用梯度下降（Gradient Descent）更新权重，从而最小化损失函数。",
			Date:     "2024-02-02",
			Category: "AI",
			Tags:     []string{"Deep Learning"},
		},
		{
			ID:       "ai-3",
			Title:    "Transformer & Self-Attention",
			Content:  "Transformer 彻底改变了 NLP 领域。其核心是自注意力机制（Self-Attention），允许模型在处理序列时关注输入的不同部分，无论距离多远。这解决了 RNN 处理长序列时的梯度消失问题。",
			Date:     "2024-02-03",
			Category: "AI",
			Tags:     []string{"NLP", "Transformer"},
		},
		{
			ID:       "ai-4",
			Title:    "GNN (图神经网络)",
			Content:  "GNN 专门用于处理图结构数据（如社交网络、分子结构）。它通过聚合邻居节点的信息来更新当前节点的特征表示。在推荐系统和新药研发中有广泛应用。",
			Date:     "2024-02-04",
			Category: "AI",
			Tags:     []string{"GNN", "Graph"},
		},
		{
			ID:       "tool-1",
			Title:    "Linux: Grep & Awk 文本处理神器",
			Content:  "Grep 用于搜索文本，Awk 用于处理列数据。例如：\n`grep \"Error\" log.txt | awk '{print $2}'` \n这条命令可以快速从日志中提取报错的时间戳（假设时间戳在第二列）。后端工程师必备技能。",
			Date:     "2024-03-01",
			Category: "Tools",
			Tags:     []string{"Linux", "Shell"},
		},
		{
			ID:       "tool-2",
			Title:    "Git Workflow: Rebase vs Merge",
			Content:  "Merge 会保留所有提交历史并产生 Merge Commit，适合主分支合并。Rebase 会重写历史，使提交线变成直线，适合个人开发分支整理。保持 Git 历史整洁是专业素养的体现。",
			Date:     "2024-03-02",
			Category: "Tools",
			Tags:     []string{"Git", "DevOps"},
		},
		{
			ID:       "life-1",
			Title:    "番茄工作法 (Pomodoro)",
			Content:  "设定 25 分钟专注工作，然后休息 5 分钟。每 4 个循环大休息一次。这利用了人的注意力周期，避免长时间工作的倦怠感，极大提高效率。",
			Date:     "2024-04-01",
			Category: "生活",
			Tags:     []string{"Efficiency"},
		},
		{
			ID:       "life-2",
			Title:    "数码断舍离",
			Content:  "定期清理手机 APP，关闭非必要通知。尝试每天睡前 1 小时不看屏幕。你会发现焦虑感降低，睡眠质量显著提升。",
			Date:     "2024-04-02",
			Category: "生活",
			Tags:     []string{"Minimalism"},
		},
	}
}

func GuestbookEntries() []types.GuestbookEntry {
	return []types.GuestbookEntry{
		{
			ID:      "1",
			Author:  "Alice",
			Content: "网站设计太酷了！非常喜欢这种黑白风格。",
			Date:    "2023-12-01 10:00",
			Likes:   5,
			Replies: []types.GuestbookReply{
				{ID: "r1", Author: "博主", Content: "谢谢 Alice！Nike 风格确实很有张力。", Date: "2023-12-01 11:30"},
			},
		},
	}
}

func Profile() types.ProfileData {
	return types.ProfileData{
		Name:         "小田",
		Avatar:       "https://picsum.photos/seed/xiaotian/800/1200",
		Institution:  "东南大学 (SEU)",
		FieldOfStudy: "集成电路工程",
		Location:     "中国 · 南京",
		Email:        "230249472@seu.edu.cn",
		Bio: "你好，我是小田。\n" +
			"一名就读于东南大学集成电路工程专业的研究生。在代码逻辑与硅片纹理之间，我也是一名热衷于探索世界的开发者与创作者。\n" +
			"我相信技术（IC/AI）与艺术的结合能创造出最动人的叙事。在这个博客里，我记录校园生活的点滴，分享在世界各地的足迹，以及在芯片设计与编程道路上的每一次顿悟。\n" +
			"永远保持好奇，永远在路上。",
		Skills: []string{"Verilog", "FPGA", "Python", "React", "Photography", "AI/LLM"},
		Awards: []types.Award{
			{Year: "2023", Title: "全国大学生计算机设计大赛 一等奖", Description: "软件应用与开发组"},
			{Year: "2023", Title: "RoboMaster 机甲大师赛 区域赛冠军", Description: "视觉算法负责人"},
			{Year: "2024", Title: "大学生微电影节 最佳导演提名", Description: "作品《青春》"},
		},
	}
}
